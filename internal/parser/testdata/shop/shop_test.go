package shop

type Ignored struct{}
