package core

// CategoryTemplate is one main category of the default taxonomy together
// with its subcategory names.
type CategoryTemplate struct {
	Main string
	Subs []string
}

const (
	DemoGroupID   = "00000000-0000-4000-a000-000000000001"
	DemoGroupName = "Demo Household"
	DemoPerson1   = "Demo Person A"
	DemoPerson2   = "Demo Person B"
)

// DefaultTaxonomy is seeded into every new group.
var DefaultTaxonomy = []CategoryTemplate{
	{Main: "Alimentos", Subs: []string{"Mercado", "Restaurants", "Rappi", "Snacks", "Alcohol", "Carne", "Verduras/Frutas"}},
	{Main: "Servicios", Subs: []string{"Arriendo", "Electricidad", "Internet", "Gas", "Agua", "Lavanderia", "Otros servicios"}},
	{Main: "Transporte", Subs: []string{"Gasolina", "Taxis", "Parking", "Seguro Auto", "Credito Auto", "Mantenimiento Auto", "Impuesto Auto"}},
	{Main: "Muebles/Housing", Subs: []string{"Fornitura", "Decoracion", "Oficina", "Electrodomesticos/Cocina", "Electrodomesticos/Entretenimiento"}},
	{Main: "Health & Fitness", Subs: []string{"Medical", "Farmacia", "Gym/Fitness", "Seguro Medico"}},
	{Main: "Entretenimiento", Subs: []string{"Cine", "Conciertos", "Actividades", "Deportes", "Fiestas/reuniones"}},
	{Main: "Viajes", Subs: []string{"Vuelos", "Hoteles", "Food & Dining", "Actividades", "Transporte"}},
	{Main: "Bills & Services", Subs: []string{"Subscripciones", "Gastos Bancarios", "Gastos Legales", "Otros servicios"}},
	{Main: "Mascotas", Subs: []string{"Alimento", "Medicinas", "Veterinario", "Juguetes"}},
	{Main: "Other", Subs: []string{"Miscellaneous", "Uncategorized"}},
}

// DemoGroup returns the creation input of the fixed demo household.
func DemoGroup() NewGroup {
	return NewGroup{
		ID:          DemoGroupID,
		Name:        DemoGroupName,
		Person1Name: DemoPerson1,
		Person2Name: DemoPerson2,
		IsDemo:      true,
	}
}
