// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package params

import "errors"

// ErrTooShortToDecode indicates the length of user input is too short to be decoded.
var ErrTooShortToDecode = errors.New("too short to decode")

// ErrTooShortToSerialize indicates the length of the destination buffer is too short to serialize into.
var ErrTooShortToSerialize = errors.New("too short to serialize")
