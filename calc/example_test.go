package calc_test

import (
	"fmt"

	"github.com/safinsingh/bamboo/calc"
)

func ExampleParse() {
	c, err := calc.Parse("100%:-20px")
	if err != nil {
		panic(err)
	}
	fmt.Println(c, c.Evaluate(1920), c.Evaluate(1280))

	_, err = calc.Parse("100%:?5px")
	fmt.Println(err)

	// Output:
	// 100%:-20px 1900 1260
	// 6: unknown operator "?", expected one of +-*/%^
}

func ExampleCalculation_Evaluate() {
	// Segments apply left to right, with no precedence.
	c := calc.MustParse("2:+3:*4")
	fmt.Println(c.Evaluate(0))

	// Percentages anywhere are taken of the basis.
	c = calc.MustParse("10px:+10%")
	fmt.Println(c.Evaluate(200))

	// Output:
	// 20
	// 30
}

func ExampleDecodeNumeric() {
	for _, raw := range []interface{}{28, 12.5, " 3%:+2px ", true} {
		n, err := calc.DecodeNumeric(raw)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(n, n.Resolve(1000))
	}

	// Output:
	// 28 28
	// 12.5 12.5
	// "3%:+2px" 32
	// expected a number or an expression string, got bool
}
