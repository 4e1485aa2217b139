package entity

import "strings"

// Address is the shipping address captured with an order. All components are
// optional; rendering joins whatever is present.
type Address struct {
	Line       string
	City       string
	State      string
	PostalCode string
}

// IsZero reports whether no component is set.
func (a Address) IsZero() bool {
	return a.Line == "" && a.City == "" && a.State == "" && a.PostalCode == ""
}

// Render joins the present components with commas: "12 MG Road, Madurai, Tamil Nadu, 625001".
func (a Address) Render() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line, a.City, a.State, a.PostalCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}
