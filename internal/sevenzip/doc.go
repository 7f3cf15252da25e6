// SPDX-License-Identifier: MPL-2.0

// Package sevenzip locates the 7-Zip command-line tool and drives it as a
// subprocess to unpack transfer bundles.
//
// 7-Zip is the only external process the archive pipeline depends on.
// Location is resolved once per run from, in order: caller-configured
// paths, a short list of conventional install locations, then PATH. A
// missing tool is a structural failure; the pipeline aborts rather than
// attempting a fallback extraction.
package sevenzip
