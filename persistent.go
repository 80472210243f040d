package custody

// Marshaller is anything that can be represented in binary
//
// Marshall may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this often requires
// a pointer, and Marshal does not.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}
