// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system 注册所有内置程序
package system

import (
	_ "github.com/33cn/wager/system/dapp/sysprog/executor" //register system program
	_ "github.com/33cn/wager/system/dapp/wager/executor"   //register wager program
)
