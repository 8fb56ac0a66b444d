package seeder

import (
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
)

// Defect rates. Each is an independent trial per row.
const (
	CustomerNullNameRate     = 0.005
	CustomerInvalidEmailRate = 0.01
	CustomerFutureDateRate   = 0.01

	ProductNullNameRate      = 0.002
	ProductNegativePriceRate = 0.005
	ProductNegativeStockRate = 0.01
)

const (
	CategoryCount = 8
	SupplierCount = 5000
	// MaxSupplierID is the upper bound products draw from; ids above
	// SupplierCount reference no supplier.
	MaxSupplierID = 6000

	InvalidEmailDomain = "invalid"
)

var Categories = []Category{
	{"Electronics", "Electronic devices and accessories"},
	{"Clothing", "Apparel and fashion items"},
	{"Food", "Food and beverages"},
	{"Books", "Books and publications"},
	{"Toys", "Toys and games"},
	{"Sports", "Sports equipment and gear"},
	{"Home", "Home and garden products"},
	{"Beauty", "Beauty and personal care"},
}

var ProductNames = []string{
	"Wireless Bluetooth Headphones",
	"USB-C Charging Cable",
	"Portable Power Bank",
	"Laptop Stand",
	"Wireless Mouse",
	"Stainless Steel Water Bottle",
	"Coffee Maker",
	"Blender",
	"Non-Stick Frying Pan",
	"Kitchen Knife Set",
	"Cotton T-Shirt",
	"Denim Jeans",
	"Running Shoes",
	"Winter Jacket",
	"Baseball Cap",
	"Electric Toothbrush",
	"Yoga Mat",
	"Resistance Bands",
	"Face Moisturizer",
	"Shampoo & Conditioner Set",
	"Notebook Set",
	"Ballpoint Pens (Pack of 10)",
	"Desk Organizer",
	"Sticky Notes",
	"Printer Paper (500 Sheets)",
}

var EmailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "email.com", "mail.com"}

// GenerateCustomer draws one customer row. The order of draws from src is
// fixed; changing it changes every row after the first.
func GenerateCustomer(src Source) Customer {
	var c Customer

	if src.Float64() < CustomerNullNameRate {
		c.Email = src.Email()
	} else {
		name := src.Name()
		c.Name = sql.NullString{String: truncate(name, 100), Valid: true}
		c.Email = customerEmail(src, name)
	}

	now := src.Now()
	if src.Float64() < CustomerFutureDateRate {
		c.CreatedDate = src.DateBetween(now.AddDate(0, 0, 1), now.AddDate(0, 0, 30))
	} else {
		c.CreatedDate = src.DateBetween(now.AddDate(-5, 0, 0), now)
	}

	c.Phone = truncate(src.Phone(), 20)
	c.Country = truncate(src.Country(), 100)
	c.IsActive = src.Intn(2) == 1
	return c
}

func customerEmail(src Source, name string) string {
	tokens := strings.Fields(strings.ToLower(name))
	if len(tokens) < 2 {
		return truncate(src.Email(), 100)
	}

	// first and last token; middle names are skipped
	local := tokens[0] + "." + tokens[len(tokens)-1]
	if src.Float64() < CustomerInvalidEmailRate {
		return truncate(local+"@"+InvalidEmailDomain, 100)
	}
	return truncate(local+"@"+EmailDomains[src.Intn(len(EmailDomains))], 100)
}

// GenerateProduct draws one product row. i is the row's index within its
// batch and picks the catalog name.
func GenerateProduct(src Source, i int) Product {
	var p Product

	if src.Float64() >= ProductNullNameRate {
		p.Name = sql.NullString{String: ProductNames[i%len(ProductNames)], Valid: true}
	}

	var price float64
	if src.Float64() < ProductNegativePriceRate {
		price = -src.Uniform(10, 1000)
	} else {
		price = src.Uniform(5, 2000)
	}
	p.UnitPrice = decimal.NewFromFloat(price).Round(4)

	if src.Float64() < ProductNegativeStockRate {
		p.StockQuantity = -src.IntRange(1, 100)
	} else {
		p.StockQuantity = src.IntRange(0, 1000)
	}

	p.SupplierID = src.IntRange(1, MaxSupplierID)
	p.CategoryID = src.IntRange(1, CategoryCount)

	now := src.Now()
	p.CreatedDate = src.DateBetween(now.AddDate(-3, 0, 0), now)
	return p
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

