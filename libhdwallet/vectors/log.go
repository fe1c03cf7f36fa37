package vectors

import (
	"github.com/kaspanet/hdwallet/infrastructure/logger"
	"github.com/kaspanet/hdwallet/util/panics"
)

var log, _ = logger.Get(logger.SubsystemTags.VECT)
var spawn = panics.GoroutineWrapperFunc(log)
