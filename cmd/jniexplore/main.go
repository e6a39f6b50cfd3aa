// jniexplore pokes at the bridge's construction path against an in-memory
// runtime: list classes, construct instances from command-line arguments,
// and watch the reference tables while doing it interactively.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/jni-bridge/fakevm"
	"github.com/wippyai/jni-bridge/jni"
)

func main() {
	var (
		className   = flag.String("new", "", "Class to construct (e.g. java/awt/Point)")
		argList     = flag.String("args", "", "Constructor arguments (comma-separated)")
		list        = flag.Bool("list", false, "List registered classes and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	vm := seedVM()
	jni.Init(vm)

	if *interactive {
		if err := runInteractive(vm); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list {
		listClasses(vm)
		return
	}

	if *className == "" {
		fmt.Fprintln(os.Stderr, "Usage: jniexplore -list")
		fmt.Fprintln(os.Stderr, "       jniexplore -new <class> [-args v1,v2,...]")
		fmt.Fprintln(os.Stderr, "       jniexplore -i  (interactive mode)")
		os.Exit(1)
	}

	if err := construct(vm, *className, *argList); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// seedVM registers a few classes with realistic shapes, plus one whose
// constructor raises, so the invocation error path is reachable from the CLI.
func seedVM() *fakevm.FakeVM {
	vm := fakevm.New()

	vm.RegisterClass(fakevm.ClassSpec{
		Name:         "java/lang/Object",
		Constructors: []string{"()V"},
	})
	vm.RegisterClass(fakevm.ClassSpec{
		Name:         "java/lang/Integer",
		Constructors: []string{"(I)V", "(Ljava/lang/String;)V"},
		Methods:      map[string][]string{"intValue": {"()I"}},
		Fields:       map[string]string{"value": "I"},
	})
	vm.RegisterClass(fakevm.ClassSpec{
		Name:         "java/awt/Point",
		Constructors: []string{"()V", "(II)V"},
		Fields:       map[string]string{"x": "I", "y": "I"},
	})
	vm.RegisterClass(fakevm.ClassSpec{
		Name:         "java/lang/Thread",
		Constructors: []string{"()V", "(Ljava/lang/String;)V"},
		Methods:      map[string][]string{"getName": {"()Ljava/lang/String;"}},
	})
	vm.RegisterClass(fakevm.ClassSpec{
		Name:         "demo/Broken",
		Constructors: []string{"()V"},
	})
	vm.FailConstructor("demo/Broken", "()V", "java.lang.ExceptionInInitializerError: demo")

	return vm
}

func listClasses(vm *fakevm.FakeVM) {
	names := vm.ClassNames()
	sort.Strings(names)

	fmt.Printf("Registered classes:\n")
	for _, name := range names {
		ctors := vm.ClassConstructors(name)
		sort.Strings(ctors)
		fmt.Printf("  %s\n", name)
		for _, sig := range ctors {
			fmt.Printf("    <init>%s\n", sig)
		}
	}
}

func construct(vm *fakevm.FakeVM, className, argList string) error {
	cls, err := jni.FindClass(className)
	if err != nil {
		return err
	}
	defer cls.Close()

	var raw []string
	if argList != "" {
		raw = strings.Split(argList, ",")
	}

	args, descriptor, err := matchConstructor(vm, className, raw)
	if err != nil {
		return err
	}

	obj, err := cls.NewInstance(args...)
	if err != nil {
		return err
	}
	defer obj.Close()

	fmt.Printf("Constructed %s via <init>%s\n", className, descriptor)
	fmt.Printf("Handle: %#x (global)\n", obj.Handle())

	st := vm.Stats()
	fmt.Printf("\nReference tables:\n")
	fmt.Printf("  globals: %d live (%d created, %d deleted)\n", st.GlobalsLive, st.GlobalsCreated, st.GlobalsDeleted)
	fmt.Printf("  locals:  %d live (%d created, %d deleted)\n", st.LocalsLive, st.LocalsCreated, st.LocalsDeleted)
	return nil
}

// matchConstructor picks the registered constructor whose parameter count
// matches the raw argument list and converts the arguments to its types.
func matchConstructor(vm *fakevm.FakeVM, className string, raw []string) ([]any, string, error) {
	ctors := vm.ClassConstructors(className)
	sort.Strings(ctors)

	for _, descriptor := range ctors {
		params, ok := splitParams(descriptor)
		if !ok || len(params) != len(raw) {
			continue
		}
		args := make([]any, len(raw))
		failed := false
		for i, p := range params {
			v, err := convertArg(raw[i], p)
			if err != nil {
				failed = true
				break
			}
			args[i] = v
		}
		if !failed {
			return args, descriptor, nil
		}
	}
	return nil, "", fmt.Errorf("no constructor of %s takes %d such argument(s)", className, len(raw))
}

// splitParams breaks a method descriptor's parameter list into per-argument
// type descriptors. Arrays are not supported by this tool.
func splitParams(descriptor string) ([]string, bool) {
	end := strings.IndexByte(descriptor, ')')
	if len(descriptor) < 2 || descriptor[0] != '(' || end < 0 {
		return nil, false
	}
	body := descriptor[1:end]

	var params []string
	for i := 0; i < len(body); {
		switch body[i] {
		case 'L':
			j := strings.IndexByte(body[i:], ';')
			if j < 0 {
				return nil, false
			}
			params = append(params, body[i:i+j+1])
			i += j + 1
		case '[':
			return nil, false
		default:
			params = append(params, string(body[i]))
			i++
		}
	}
	return params, true
}

func convertArg(value, descriptor string) (any, error) {
	switch descriptor {
	case "Z":
		return value == "true" || value == "1", nil
	case "B":
		v, err := strconv.ParseInt(value, 10, 8)
		return int8(v), err
	case "S":
		v, err := strconv.ParseInt(value, 10, 16)
		return int16(v), err
	case "C":
		r := []rune(value)
		if len(r) != 1 {
			return nil, fmt.Errorf("char argument %q must be a single character", value)
		}
		return uint16(r[0]), nil
	case "I":
		v, err := strconv.ParseInt(value, 10, 32)
		return int32(v), err
	case "J":
		v, err := strconv.ParseInt(value, 10, 64)
		return v, err
	case "F":
		v, err := strconv.ParseFloat(value, 32)
		return float32(v), err
	case "D":
		return strconv.ParseFloat(value, 64)
	case "Ljava/lang/String;":
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported argument type %s", descriptor)
	}
}
