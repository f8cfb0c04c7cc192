// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package sccp

import "github.com/sigtrand/sigtrand/internal/logging"

var pkgLogger = logging.Get().Component("sccp")

// logf logs a diagnostic at debug level; it never affects control flow and
// exists for messages like "unexpected parameter in NewXUDT" that are worth
// surfacing but don't warrant a returned error.
func logf(format string, args ...interface{}) {
	pkgLogger.Debug(format, "args", args)
}
