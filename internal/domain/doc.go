// Package domain defines the core business entities and errors.
//
// Entities validate themselves on construction and after mutation,
// keeping invalid state out of the stores and the API layer.
package domain
