package entity

// CategoryPolicy parametriza el comportamiento de los registros de lotes y
// seriales por categoría de producto. Es una tabla inyectada, no lógica
// condicional: agregar una categoría nueva no toca los algoritmos de
// validación ni de ordenamiento.
type CategoryPolicy struct {
	Category              string
	RequiresExpiry        bool   // si la categoría exige fecha de vencimiento en cada lote
	BatchLabel            string // etiqueta para "número de lote" en la UI ("Lot No", "Roll/Bale No", ...)
	FallbackPrefix        string // prefijo para sugerir códigos cuando el SKU no aporta token
	DefaultWarrantyMonths int    // duración de garantía por defecto para seriales
}

// CategoryPolicyTable búsqueda de política por clave de categoría.
type CategoryPolicyTable map[string]CategoryPolicy

// Lookup devuelve la política de la categoría, o la de "general" si no existe.
func (t CategoryPolicyTable) Lookup(category string) CategoryPolicy {
	if p, ok := t[category]; ok {
		return p
	}
	if p, ok := t["general"]; ok {
		return p
	}
	// Tabla vacía o sin "general": política neutra.
	return CategoryPolicy{Category: category, BatchLabel: "Batch No", FallbackPrefix: "GEN"}
}

// DefaultCategoryPolicies tabla semilla usada cuando la base de datos no tiene
// filas en category_policies (instalaciones nuevas).
func DefaultCategoryPolicies() CategoryPolicyTable {
	return CategoryPolicyTable{
		"general":     {Category: "general", RequiresExpiry: false, BatchLabel: "Batch No", FallbackPrefix: "GEN"},
		"pharma":      {Category: "pharma", RequiresExpiry: true, BatchLabel: "Batch No", FallbackPrefix: "MED", DefaultWarrantyMonths: 0},
		"food":        {Category: "food", RequiresExpiry: true, BatchLabel: "Lot No", FallbackPrefix: "ALM"},
		"textile":     {Category: "textile", RequiresExpiry: false, BatchLabel: "Roll/Bale No", FallbackPrefix: "TEX"},
		"garments":    {Category: "garments", RequiresExpiry: false, BatchLabel: "Lot No", FallbackPrefix: "CNF"},
		"electronics": {Category: "electronics", RequiresExpiry: false, BatchLabel: "Batch No", FallbackPrefix: "ELE", DefaultWarrantyMonths: 12},
	}
}
