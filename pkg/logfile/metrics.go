package logfile

import intlogfile "github.com/riverlog/eventlog/internal/logfile"

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
var RegisterMetrics = intlogfile.RegisterMetrics

// RolloverTotal counts segment rollovers executed by a caller. It is exported so higher layers that decide when
// to roll (this package deliberately does not) can report their own rollovers through the same metric family.
var RolloverTotal = intlogfile.RolloverTotal
