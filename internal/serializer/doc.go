// Package serializer converts grids to and from the versioned transport
// string `base64(<json>//<version>)`.
//
// The JSON payload is a plain object tree in which every element carries a
// "type" discriminator: "MTreeNode" for split nodes and "MPart" for parts.
// Payloads written by older versions are upgraded by a static chain of
// JSON-to-JSON migrations before they are decoded; results report whether a
// migration ran so callers can persist the upgraded form.
package serializer
