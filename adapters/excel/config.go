package excel

// Config points the reader at a data source.
type Config struct {
	FilePath string
	Sheet    string // xlsx sheet name; ignored for csv
}

// DefaultConfig returns the reference reader configuration.
func DefaultConfig() Config {
	return Config{Sheet: "Sheet1"}
}
