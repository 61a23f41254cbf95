// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spatial

// Params are the learning and inference parameters of a spatial node
type Params struct {
	MaxDist    float32 `def:"0" min:"0" desc:"squared-distance threshold for merging an input into an existing coincidence -- 0 = only identical patterns merge"`
	Sigma      float32 `def:"0" min:"0" desc:"width of the gaussian used in inference -- if 0, sigma^2 = MaxDist, or 1 if MaxDist is also 0"`
	MaxOutSize int     `def:"1000" min:"1" desc:"maximum number of coincidences, and length of the inference output vector"`

	SqSig float32 `inactive:"+" view:"-" json:"-" xml:"-" desc:"computed sigma^2 used in inference"`
}

func (sp *Params) Defaults() {
	sp.MaxDist = 0
	sp.Sigma = 0
	sp.MaxOutSize = 1000
	sp.Update()
}

// Update must be called after any changes to parameters
func (sp *Params) Update() {
	if sp.MaxOutSize < 1 {
		sp.MaxOutSize = 1
	}
	sp.SqSig = sp.SqSigma()
}

// SqSigma returns sigma^2: Sigma^2 if Sigma is set, else MaxDist
// (which is already a squared distance), else 1.
func (sp *Params) SqSigma() float32 {
	switch {
	case sp.Sigma > 0:
		return sp.Sigma * sp.Sigma
	case sp.MaxDist > 0:
		return sp.MaxDist
	default:
		return 1
	}
}
