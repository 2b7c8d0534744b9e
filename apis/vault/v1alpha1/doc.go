// Package v1alpha1 contains the option types describing a content package:
// package properties, workspace filters and their rules.
package v1alpha1
