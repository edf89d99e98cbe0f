package main

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("texls")
