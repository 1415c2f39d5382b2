//go:build !unix

package preflight

func checkReadWrite(string) error { return nil }
