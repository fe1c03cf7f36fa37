package signing

import (
	"github.com/kaspanet/hdwallet/infrastructure/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.SIGN)
