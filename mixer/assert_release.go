// SPDX-License-Identifier: EPL-2.0

//go:build !retroraindebug

package mixer

const strictContracts = false
