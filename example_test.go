package sheet_test

import (
	"fmt"
	"os"

	"github.com/cellkit/sheet"
)

func Example() {
	s := sheet.NewSheet()

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(s.Set(sheet.FromText("A1"), "3"))
	must(s.Set(sheet.FromText("A2"), "4"))
	must(s.Set(sheet.FromText("A3"), "=A1*A1+A2*A2"))

	c, err := s.GetCell(sheet.FromText("A3"))
	must(err)
	v := c.GetValue(s)
	fmt.Println(v.Number)

	must(s.PrintTexts(os.Stdout))

	// Output:
	// 25
	// 3
	// 4
	// =A1*A1+A2*A2
}
