package input

// Direction defines the directions focus can move between inputs.
type Direction int

const (
	Up Direction = iota //nolint:varnamelen
	Down
)
