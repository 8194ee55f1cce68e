// Package naming assigns URL-safe names to records, keeping them unique
// within a scope.
//
// A Strategy is parametrized by what the record's URL identifier is built
// from (name only, id only, or id plus name) and whether uniqueness is
// global or relative to a parent scope. Collisions against the persistent
// store, reserved words, and not-yet-persisted siblings are resolved by
// appending integer suffixes starting at 2:
//
//	s := naming.NewStrategy(urlid.NameOnly, naming.WithChecker(store))
//	name, err := s.MakeName(ctx, "Hello")   // "hello"
//	name, err = s.MakeName(ctx, "Hello")    // "hello2" if "hello" is taken
//
// The in-process check is optimistic: concurrent writers in separate
// processes can still race, and the store's uniqueness constraint remains
// the final arbiter. Pending tracks names claimed by sibling records in the
// same unit of work so a batch insert does not collide with itself.
package naming
