// Package transcode converts source images into AVIF variants.
//
// Each source yields two encodes: a thumbnail whose longer edge matches the
// configured width, and a full variant capped at the configured max width.
// Neither is ever upscaled. Encoding uses a pure-Go AVIF encoder, so the
// binary stays cgo-free.
package transcode
