package script_test

import (
	"context"
	"fmt"

	"github.com/walteh/regexer/pkg/script"
)

func ExampleParse() {
	src := `// greetings become farewells
"hi(.)" -> "bye$1$1"
the arrow can carry prose "cow" -> "yak" like this`

	rs, err := script.Parse(context.Background(), "example.txt", src)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, r := range rs.Rules() {
		fmt.Printf("line %d: %s\n", r.Line(), r)
	}

	// Output:
	// line 2: Rule{find: "hi(.)", replace: "bye$1$1"}
	// line 3: Rule{find: "cow", replace: "yak"}
}

func ExampleParse_error() {
	src := "\"a\" -> \"b\"\nthis line is not a rule"

	_, err := script.Parse(context.Background(), "replacements.txt", src)
	fmt.Println(err)

	// Output:
	// failure on line 2 of replacements.txt: could not parse line "this line is not a rule": expected "find" -> "replace"
}

func ExampleRule_Apply() {
	r, err := script.NewRule("hi(.)", "bye$1$1")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(r.Apply("hi!!! (I am staring at a highland cow)"))

	// Output:
	// bye!!!! (I am staring at a byegghland cow)
}
