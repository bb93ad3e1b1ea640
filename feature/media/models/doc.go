// Package models contains the processed image asset descriptors produced by
// the media consumer.
package models
