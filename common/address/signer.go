// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

// ProgramSigner is the capability to sign for a derived authority.
// It can only be obtained from DeriveSigner or VerifyProgramAddress.
type ProgramSigner struct {
	program Address
	seeds   [][]byte
	key     Address
	valid   bool
}

// DeriveSigner derive the authority of programID for seeds and return its signing capability
func DeriveSigner(programID Address, seeds ...[]byte) (*ProgramSigner, error) {
	key, err := CreateProgramAddress(programID, seeds...)
	if err != nil {
		return nil, err
	}
	s := &ProgramSigner{program: programID, key: key, valid: true}
	for _, seed := range seeds {
		s.seeds = append(s.seeds, append([]byte(nil), seed...))
	}
	return s, nil
}

// VerifyProgramAddress check candidate is the authority of programID for seeds
func VerifyProgramAddress(programID, candidate Address, seeds ...[]byte) (*ProgramSigner, error) {
	s, err := DeriveSigner(programID, seeds...)
	if err != nil {
		return nil, err
	}
	if s.key != candidate {
		return nil, ErrAddressMismatch
	}
	return s, nil
}

// Key the derived authority address
func (s *ProgramSigner) Key() Address {
	return s.key
}

// Program the program the authority belongs to
func (s *ProgramSigner) Program() Address {
	return s.program
}

// Valid false for zero values built outside this package
func (s *ProgramSigner) Valid() bool {
	return s != nil && s.valid
}

// Seeds copy of the derivation seeds, bump included
func (s *ProgramSigner) Seeds() [][]byte {
	out := make([][]byte, len(s.seeds))
	for i, seed := range s.seeds {
		out[i] = append([]byte(nil), seed...)
	}
	return out
}
