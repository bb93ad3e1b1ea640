// Package imagemeta inspects image buffers: header dimensions and format for
// every fetched or synthesized asset, full decoding for ranking, and a
// BlurHash placeholder for consumers. JPEG, PNG, GIF and WebP are supported.
package imagemeta
