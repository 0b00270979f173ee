package app

import "time"

// now is indirected so tests can pin tick timestamps.
var now = time.Now
