package demo

// TestDatachunkA is a small shared record.
type TestDatachunkA struct {
	FieldA bool   `yaml:"field_a" json:"field_a"`
	FieldB uint32 `yaml:"field_b" json:"field_b"`
	FieldC string `yaml:"field_c" json:"field_c"`
}
