package common

import "path"

// PkgAlias returns the default qualifier of an imported package: the last
// element of its import path. It returns "" for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// Qualified returns name qualified by the package at pkgPath, or name alone
// when pkgPath is empty.
func Qualified(pkgPath, name string) string {
	if alias := PkgAlias(pkgPath); alias != "" {
		return alias + "." + name
	}

	return name
}
