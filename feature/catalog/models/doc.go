// Package models contains the catalog data types: the persisted Game record,
// its tags, and the closed enums for controller support and compatibility.
package models
