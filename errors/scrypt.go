package errors

// scryptDescriptions maps native scrypt status codes to their stable
// descriptions. Populated once; never mutated.
var scryptDescriptions = map[int]string{
	0:  "success",
	1:  "resource-limit query failed",
	2:  "clock/timer query failed",
	3:  "error computing derived key",
	4:  "could not read salt from entropy source",
	5:  "underlying crypto library error",
	6:  "allocation failed",
	7:  "data is not a valid scrypt-encrypted block",
	8:  "unrecognized scrypt format",
	9:  "decrypting would take too much memory",
	10: "decrypting would take too long",
	11: "password is incorrect",
	12: "error writing output",
	13: "error reading input",
}

const unknownDescription = "error unknown"

// Describe returns the description for a native scrypt status code. Codes
// outside 0-13 map to a generic unknown description.
func Describe(code int) string {
	if descr, ok := scryptDescriptions[code]; ok {
		return descr
	}
	return unknownDescription
}
