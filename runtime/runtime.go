// Package runtime inlines small helper functions into compiled programs.
// Passes request helpers by name from a Registry; each helper is defined
// once, bound to a collision-free identifier, and prepended to the program
// during finalization.
package runtime

// sharedHelpers holds the predefined helper definitions available to every
// pass by name. Definition text may reference another shared helper with a
// %name placeholder, which is replaced by that helper's unique identifier
// before parsing. The reference graph of shared definitions must stay
// acyclic; cyclic definitions are unsupported and rejected at registration.
var sharedHelpers = map[string]string{
	// hasOwn tests own-property membership without trusting the object's
	// own hasOwnProperty, which may be shadowed.
	"hasOwn": `function (obj, key) {
		return Object.prototype.hasOwnProperty.call(obj, key)
	}`,

	// toObject coerces a value to an object, rejecting null and undefined
	// the way property enumeration would.
	"toObject": `function (it) {
		if (it == null) {
			throw new TypeError("cannot convert " + it + " to an object")
		}
		return Object(it)
	}`,

	// keys materializes an object's own enumerable property names, in the
	// host's enumeration order.
	"keys": `function (it) {
		var obj = %toObject(it)
		var result = []
		for (var key in obj) {
			if (%hasOwn(obj, key)) {
				result.push(key)
			}
		}
		return result
	}`,

	// hasProperty tests property membership including the prototype chain.
	"hasProperty": `function (obj, key) {
		return %hasOwn(obj, key) || key in Object(obj)
	}`,
}
