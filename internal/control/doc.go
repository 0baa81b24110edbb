// Package control defines the shapes of editable control trees.
//
// A control tree mirrors a data shape: leaves become cells holding a single
// settable value, records become groups of named child controls and lists
// become arrays of uniformly shaped child controls. The package describes the
// tree's structure only; live values belong to whichever form layer builds
// the tree.
package control
