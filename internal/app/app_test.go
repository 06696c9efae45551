package app

import "testing"

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "8080", want: ":8080"},
		{in: " :9000 ", want: ":9000"},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ListenAddr(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestContainerClose_Nil(t *testing.T) {
	var c *Container
	if err := c.Close(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := (&Container{}).Close(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
