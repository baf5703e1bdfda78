package mover

// SetCollisionBoundForTests overrides the suffix-probe bound during tests.
func SetCollisionBoundForTests(n int) func() {
	previous := maxCollisionAttempts
	maxCollisionAttempts = n
	return func() {
		maxCollisionAttempts = previous
	}
}
