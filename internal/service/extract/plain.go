package extract

// plainStrategy decodes the buffer as UTF-8 without further parsing. CSV
// content is treated as plain text; its structure is not interpreted.
type plainStrategy struct {
	name string
}

func (s plainStrategy) Method() string {
	return s.name
}

func (plainStrategy) Extract(data []byte) (string, error) {
	return string(data), nil
}
