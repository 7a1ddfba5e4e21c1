package entity

// CustomerLookup relaciona el ID de cliente con su nombre. Se carga una vez por ejecución y es de solo lectura.
type CustomerLookup map[string]string

// Name devuelve el nombre del cliente y si existe en el lookup.
func (l CustomerLookup) Name(customerID string) (string, bool) {
	name, ok := l[customerID]
	return name, ok
}
