//go:build !race

package fastauth

func passwordHashCost() int {
	return DefaultHashCost
}
