package main

import (
	"fmt"
	"os"

	calc "github.com/fincalc/projection-engine/internal/calculation"
	"github.com/fincalc/projection-engine/internal/config"
)

// Prints the month-by-month amortization of the loan section of a
// configuration file as CSV, for checking the yearly totals by hand.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: print_schedule <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	if cfg.Loan == nil {
		fmt.Println("no loan section")
		return
	}

	rows, err := calc.AmortizationSchedule(*cfg.Loan)
	if err != nil {
		panic(err)
	}

	fmt.Println("Month,Year,Payment,Interest,Principal,Balance")
	for _, r := range rows {
		fmt.Printf("%d,%d,%s,%s,%s,%s\n", r.Month, (r.Month-1)/12+1,
			r.Payment.StringFixed(2), r.Interest.StringFixed(2), r.Principal.StringFixed(2), r.Balance.StringFixed(2))
	}
}
