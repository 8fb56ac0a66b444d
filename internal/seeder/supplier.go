package seeder

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var SupplierTypes = []string{
	"Electronics", "Distribution", "Supply", "Manufacturing", "Trading",
	"Global", "International", "Wholesale", "Solutions", "Technologies",
}

var supplierSuffixes = []string{"LLC", "Ltd", "PLC", "Inc", "Corp", "Co", "Group", "Industries", ""}

// companySuffixes are stripped from fake company names before a new suffix is added.
var companySuffixes = []string{", Inc.", ", LLC", ", Ltd", " Inc", " LLC", " Ltd"}

// GenerateSupplierName builds a company-like name from one of three patterns
// and appends a random legal suffix. Names may repeat.
func GenerateSupplierName(src Source) string {
	var base string
	switch src.Intn(3) {
	case 0:
		base = stripCompanySuffix(src.Company())
	case 1:
		word := "Prime"
		if fields := strings.Fields(src.BS()); len(fields) > 0 {
			word = cases.Title(language.English).String(fields[0])
		}
		base = word + " " + SupplierTypes[src.Intn(len(SupplierTypes))]
	default:
		base = src.LastName() + " " + SupplierTypes[src.Intn(len(SupplierTypes))]
	}

	suffix := supplierSuffixes[src.Intn(len(supplierSuffixes))]
	return truncate(strings.TrimSpace(base+" "+suffix), 150)
}

func stripCompanySuffix(name string) string {
	for _, s := range companySuffixes {
		name = strings.TrimSuffix(name, s)
	}
	return strings.TrimSpace(name)
}

// GenerateSuppliers returns n supplier rows in draw order.
func GenerateSuppliers(src Source, n int) []Supplier {
	out := make([]Supplier, 0, n)
	for i := 0; i < n; i++ {
		name := GenerateSupplierName(src)
		out = append(out, Supplier{
			Name:        name,
			ContactName: truncate(src.Name(), 100),
			Country:     truncate(src.Country(), 100),
			Phone:       truncate(src.Phone(), 20),
		})
	}
	return out
}
