/*
Package obfs obfuscates string literals so their plain text never appears in a compiled binary.

Note that this is NOT encryption, since it is easily reversible.
This falls squarely under the obfuscation category.
As such, it is NOT recommended for security critical use.
That being said, it's useful for defeating passive inspection of a binary (strings, hex dumps) since the plain text only exists in memory after decryption.

# How it works:

A single key byte is derived from a build-time seed by running a linear congruential generator for a fixed number of rounds (DeriveKey).
Each character of the plain text is then masked with XOR against the key plus the character's index, so repeated characters don't produce repeated ciphertext.
The masked characters are what gets stored in the build artifact, typically through a file generated by the xorstrgen command.
At run time, FromCiphertext restores the stored state and Decrypt reverses the mask in place, exactly once per instance.

Both narrow (byte) and wide (UTF-16 code unit) text is supported through the same generic container.

# Important note:

Decryption is destructive and one-shot.
The transform is its own inverse, so running it over an already decrypted buffer would garble it; Decrypt refuses a second call with ErrAlreadyDecrypted instead.
Instances are not synchronized. Callers sharing an instance across goroutines must decrypt it exactly once (sync.Once works well) and treat the result as read-only.

# General guidelines:
  - The seed must be fixed for a whole build. Mixing seeds across generated files means mixing keys, and nothing will line up.
  - Reproducibility is a feature here: the same seed and plain text always produce the same ciphertext bytes, so builds stay deterministic.
  - A skilled analyst with a disassembler will recover the key. This raises the bar for casual inspection, nothing more.
*/
package obfs
