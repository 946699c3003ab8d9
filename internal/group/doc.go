// Package group turns extracted legend and code entries into status groups
// and derives the identifier each group is emitted under.
package group
