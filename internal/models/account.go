package models

// AccountMeta is the stored metadata of an account. Type selects the
// credential provider.
type AccountMeta struct {
	Type    string
	Index   int
	Address string
}

// AccountContext identifies the sending account for one send operation.
type AccountContext struct {
	AccountName string
	AccountMeta AccountMeta
}
