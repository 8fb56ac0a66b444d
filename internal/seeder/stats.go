package seeder

import (
	"strings"
	"time"
)

// DefectStats counts the defects actually injected during a run.
type DefectStats struct {
	Customers        int
	NullCustomerName int
	InvalidEmail     int
	FutureCreated    int

	Products         int
	NullProductName  int
	NegativePrice    int
	NegativeStock    int
	OrphanedSupplier int
}

func (s *DefectStats) ObserveCustomer(c Customer, now time.Time) {
	s.Customers++
	if !c.Name.Valid {
		s.NullCustomerName++
	}
	if hasInvalidDomain(c.Email) {
		s.InvalidEmail++
	}
	if c.CreatedDate.After(now) {
		s.FutureCreated++
	}
}

func (s *DefectStats) ObserveProduct(p Product) {
	s.Products++
	if !p.Name.Valid {
		s.NullProductName++
	}
	if p.UnitPrice.IsNegative() {
		s.NegativePrice++
	}
	if p.StockQuantity < 0 {
		s.NegativeStock++
	}
	if p.SupplierID > SupplierCount {
		s.OrphanedSupplier++
	}
}

func hasInvalidDomain(email string) bool {
	return strings.HasSuffix(email, "@"+InvalidEmailDomain)
}

// Defect is one line of the data-quality summary.
type Defect struct {
	Description string
	Expected    float64
	Observed    int
	Of          int
}

func (d Defect) ObservedRate() float64 {
	if d.Of == 0 {
		return 0
	}
	return float64(d.Observed) / float64(d.Of)
}

func (s *DefectStats) Defects() []Defect {
	return []Defect{
		{"NULL CustomerName", CustomerNullNameRate, s.NullCustomerName, s.Customers},
		{"Invalid email format", CustomerInvalidEmailRate, s.InvalidEmail, s.Customers},
		{"Future CreatedDate", CustomerFutureDateRate, s.FutureCreated, s.Customers},
		{"NULL ProductName", ProductNullNameRate, s.NullProductName, s.Products},
		{"Negative UnitPrice", ProductNegativePriceRate, s.NegativePrice, s.Products},
		{"Negative StockQuantity", ProductNegativeStockRate, s.NegativeStock, s.Products},
		{"Orphaned SupplierID", float64(MaxSupplierID-SupplierCount) / MaxSupplierID, s.OrphanedSupplier, s.Products},
	}
}
