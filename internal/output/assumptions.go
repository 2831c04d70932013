package output

import (
	"fmt"

	"github.com/rgehrsitz/ptregime/internal/domain"
)

// AssumptionsFor lists the modeling assumptions of a rate table that are
// rendered in detailed outputs
func AssumptionsFor(rt *domain.RateTable) []string {
	c := rt.Contractor
	co := rt.Company
	return []string{
		fmt.Sprintf("Fiscal year %d rates (%s)", rt.Metadata.FiscalYear, rt.Metadata.Source),
		fmt.Sprintf("Simplified regime: %s of service income is taxable", FormatPercentage(c.ServiceCoefficient.Mul(hundred))),
		fmt.Sprintf("Independent worker social security: %s on %s of revenue",
			FormatPercentage(c.SSRate.Mul(hundred)), FormatPercentage(c.SSBaseFraction.Mul(hundred))),
		fmt.Sprintf("Company TSU: %s employer, %s employee",
			FormatPercentage(co.TSUCompany.Mul(hundred)), FormatPercentage(co.TSUWorker.Mul(hundred))),
		fmt.Sprintf("IRC: %s up to %s, %s above, plus %s derrama",
			FormatPercentage(co.IRCReducedRate.Mul(hundred)), FormatCurrency(co.IRCThreshold),
			FormatPercentage(co.IRCNormalRate.Mul(hundred)), FormatPercentage(co.DerramaRate.Mul(hundred))),
		fmt.Sprintf("Dividends taxed at %s", FormatPercentage(co.DividendTaxRate.Mul(hundred))),
		fmt.Sprintf("Salaries paid in %d installments per year", rt.Reference.SalaryPayments),
	}
}
