// Package node defines the lifecycle every flowgui node goes through and
// the containers that drive nested nodes through it.
//
// A node is declared, composed once against the statically known input type
// and the variables visible in its scope, warmed up before its first
// activation, activated any number of times and finally cleaned up:
//
//	Declared -> Composed -> Warm <-> Activating
//	                         |
//	                         v
//	                        Cool
//
// Instance enforces these transitions for a single node. Sequence drives an
// ordered list of instances: it threads types and scopes through compose,
// rolls back a partially warmed list, names the failing child of an
// activation and releases in reverse order.
//
// Node kinds implement the small Node interface plus whichever optional
// phase interfaces they need (Composer, Warmer, Cleaner, Parameterized,
// Requirer, Exposer, Identified).
package node
