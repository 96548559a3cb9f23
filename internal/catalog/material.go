// Package catalog owns the canonical material list. All reads and writes go
// through the Store, which keeps the list in memory and mirrors every
// mutation to the key-value store.
package catalog

import "github.com/shopspring/decimal"

// Unit is the measurement unit a material is sold in.
type Unit string

// Units a material can be priced by.
const (
	UnitPiece       Unit = "unit"
	UnitLiter       Unit = "liter"
	UnitSquareMeter Unit = "m2"
	UnitKilogram    Unit = "kg"
	UnitMeter       Unit = "meter"
)

// Material is a catalog record. Code is the unique key and is immutable once
// created; edits address a material by code but can never rename it.
type Material struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Unit        Unit            `json:"unit"`
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultMaterials returns a fresh copy of the seed catalog.
func DefaultMaterials() []Material {
	return []Material{
		{Code: "PROK02", Description: "LIGANTE ACRILICO X 8 LTS", UnitPrice: price("42100"), Unit: UnitPiece},
		{Code: "GALG11", Description: "GALGO REPUESTO RODILLO EPOXY PREMIUM X 22 CM (NEGRO)", UnitPrice: price("53340"), Unit: UnitPiece},
		{Code: "EPOX01", Description: "EPOXY BASE A X 20 KG", UnitPrice: price("125000"), Unit: UnitPiece},
		{Code: "EPOX02", Description: "EPOXY BASE B X 20 KG", UnitPrice: price("125000"), Unit: UnitPiece},
		{Code: "POLI01", Description: "POLIURETANO ALIFATICO X 4 LTS", UnitPrice: price("85000"), Unit: UnitPiece},
		{Code: "PRIM01", Description: "PRIMER EPOXY X 20 KG", UnitPrice: price("95000"), Unit: UnitPiece},
		{Code: "SEL01", Description: "SELLADOR ACETATO X 20 LTS", UnitPrice: price("45000"), Unit: UnitPiece},
		{Code: "MAS01", Description: "MASA EPOXY X 20 KG", UnitPrice: price("78000"), Unit: UnitPiece},
		{Code: "DIL01", Description: "DILUYENTE EPOXY X 4 LTS", UnitPrice: price("32000"), Unit: UnitPiece},
		{Code: "HERR01", Description: "HERRAMIENTA RODILLO PROFESIONAL", UnitPrice: price("15000"), Unit: UnitPiece},
	}
}

// ValidUnit reports whether u is one of the supported units.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitPiece, UnitLiter, UnitSquareMeter, UnitKilogram, UnitMeter:
		return true
	}
	return false
}
