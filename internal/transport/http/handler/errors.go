package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidRole        = "Invalid role"
	errUserNotFound       = "User not found"
	errOTPInvalid         = "Invalid or expired OTP"
	errAlreadyRegistered  = "Email already registered"
	errOTPDelivery        = "Failed to send OTP. Please try again."
	errVerifyEmailFirst   = "Please verify your email with OTP first"
	errInvalidCredentials = "Invalid email or password"
	errNotVerifiedLogin   = "Please verify your email before logging in"
	errEmailNotFound      = "No account found with this email"
	errJobNotFound        = "Job not found"
	errRecruiterOnly      = "Only recruiters can post jobs"
	errJobSeekerOnly      = "Only job seekers can apply for jobs"
	errUnauthorized       = "Unauthorized"
	errAlreadyApplied     = "You have already applied for this job"
)
