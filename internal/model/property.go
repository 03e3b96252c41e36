package model

// Property is a rental property that transactions can be associated with.
// Keywords are matched case-insensitively against statement descriptions.
type Property struct {
	Name     string
	Keywords []string
	ID       int64
}

// Category is a user-defined transaction category.
type Category struct {
	Name string
	ID   int64
}
