// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package htm is the overall repository for the spatial-pooling
"coincidence detector" engine implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* patterns: helpers on 2D etensor.Float32 patterns (blank detection, equality,
squared distance, receptive sub-field extraction, image conversion).

* coinc: the coincidence store -- an insertion-ordered mapping from a learned
pattern to its occurrence frequency.

* spatial: the node capability (Learn, Infer, TimeInfer, Clone) and the Gaussian
spatial node, which clusters inputs into a bounded dictionary of coincidences and
infers a Gaussian similarity vector against them.

* tiled: the tiled 2D layer, which spreads a larger input over a grid of nodes
with overlapping receptive fields, optionally trains a single prototype node that
is cloned across the grid, and runs learn / infer over worker threads.

* sensor: enumerates categorized training / test images from a folder hierarchy
in a chosen order, and explores each image along translation / rotation / scaling
paths, emitting a lazy sequence of patterns through pluggable filters.

* filters, writer, config: Gabor / threshold / resize filters, an observer that
writes rendered outputs as bitmap files, and run configuration loading.

* examples: these actually compile into runnable programs. examples/ocode trains
a layer from a folder of letter images and tests it on other folders.
*/
package htm
