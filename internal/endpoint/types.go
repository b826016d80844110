package endpoint

// NoIndex marks an endpoint without a slot index.
const NoIndex = -1

// Placeholders substituted into connector variable names, per endpoint.
const (
	NamePlaceholder  = "@NAME@"
	IndexPlaceholder = "@INDEX@"
)

// Endpoint is one side of a macro connect instruction.
type Endpoint struct {
	ModelID string
	// Name is the static id substituted for @NAME@. Empty when absent.
	Name string
	// Index is the aggregator slot substituted for @INDEX@, NoIndex when absent.
	Index int
}

// New creates an endpoint that refers to a model id only.
func New(modelID string) Endpoint {
	return Endpoint{ModelID: modelID, Index: NoIndex}
}

// Named creates an endpoint on a shared model, qualified by a static id.
func Named(modelID, name string) Endpoint {
	return Endpoint{ModelID: modelID, Name: name, Index: NoIndex}
}

// Indexed creates an endpoint on one slot of a shared model.
func Indexed(modelID string, index int) Endpoint {
	return Endpoint{ModelID: modelID, Index: index}
}

// HasIndex returns true if the endpoint carries a slot index.
func (e Endpoint) HasIndex() bool {
	return e.Index != NoIndex
}

// HasName returns true if the endpoint carries a static id qualifier.
func (e Endpoint) HasName() bool {
	return e.Name != ""
}
