// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Clock ledger time, Slot only ever grows
type Clock struct {
	Slot          uint64
	UnixTimestamp int64
}
