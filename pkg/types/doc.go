// Package types defines the data shared between the install pipeline's
// components: catalog releases, client pack manifests, and the Catalog and
// Stager interfaces the resolver and assembler are written against.
package types
