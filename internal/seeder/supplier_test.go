package seeder

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSupplierNamePatterns(t *testing.T) {
	tests := []struct {
		name string
		ints []int
		want string
	}{
		{"company with suffix replaced", []int{0, 0}, "Acme LLC"},
		{"bs word and industry", []int{1, 2, 8}, "Synergize Supply"},
		{"last name and industry", []int{2, 0, 2}, "Smith Electronics PLC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newStub()
			src.ints = tt.ints
			assert.Equal(t, tt.want, GenerateSupplierName(src))
		})
	}
}

func TestStripCompanySuffix(t *testing.T) {
	assert.Equal(t, "Globex", stripCompanySuffix("Globex, LLC"))
	assert.Equal(t, "Initech", stripCompanySuffix("Initech Ltd"))
	assert.Equal(t, "Hooli", stripCompanySuffix("Hooli"))
}

func TestGenerateSuppliers(t *testing.T) {
	gen := NewDataGenerator(DefaultSeed, fixedNow)

	suppliers := GenerateSuppliers(gen, SupplierCount)

	assert.Len(t, suppliers, SupplierCount)
	for _, s := range suppliers {
		assert.NotEmpty(t, s.Name)
		assert.Equal(t, strings.TrimSpace(s.Name), s.Name)
		assert.LessOrEqual(t, utf8.RuneCountInString(s.Name), 150)
		assert.LessOrEqual(t, utf8.RuneCountInString(s.Phone), 20)
		assert.LessOrEqual(t, utf8.RuneCountInString(s.Country), 100)
		assert.NotEmpty(t, s.ContactName)
	}
}
