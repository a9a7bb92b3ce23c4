package pond

// density of water, kg/m3
const rhoWater = 1000.0

// specific heat of water, J/kg K
const cWater = 4186.0

// factor applied to the pond flow when both capacity rates coincide
const capacityPerturbation = 1.001

// relative and absolute tolerance of the capacity rate match
const capacityMatchTol = 1e-9

// band around zero in which the log denominator counts as zero
const denominatorGuard = 1e-9

// initial guess offsets from the asymptote, K
const (
	defaultOffset        = 0.01
	defaultLowFlowOffset = 0.1
)

// hydronic flow below which the low flow offset is used, m3/s
const defaultLowFlowThreshold = 0.0002

// admissible |residual| of a confirmed solution
const defaultTolerance = 0.001

// Sentinel is the value carried by a residual evaluated outside its domain.
const Sentinel = 1e6
