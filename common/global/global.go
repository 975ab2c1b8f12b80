package global

const Version = "1.0.0"
