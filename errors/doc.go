// Package errors translates internal error categories and native scrypt
// status codes into structured, inspectable error values.
//
// A failure is represented by a Value with a stable code and human-readable
// message; native-routine failures additionally carry the native status code
// and its fixed description. Absence of error is an explicit nil sentinel so
// callers can always distinguish "no error" from "error present":
//
//	if errVal := errors.Make(errors.ParamObject, "N value is not present"); errVal != nil {
//	    return errVal // {err_code: 3, err_message: "Scrypt parameter object error: ..."}
//	}
//
// Native status codes are described by a process-wide immutable table
// covering codes 0 through 13; anything outside that range maps to a generic
// unknown description:
//
//	errors.MakeScrypt(11)
//	// {err_code: 5, err_message: "Scrypt error",
//	//  scrypt_err_code: 11, scrypt_err_message: "password is incorrect"}
package errors
